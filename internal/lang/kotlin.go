package lang

import "github.com/smacker/go-tree-sitter/kotlin"

// Kotlin is the registry name of the Kotlin grammar.
const Kotlin = "kotlin"

func init() {
	Languages[Kotlin] = &Language{
		Name:       Kotlin,
		Extensions: []string{".kt", ".kts"},
		lang:       kotlin.GetLanguage(),
	}
}
