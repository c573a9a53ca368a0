package application

// Translator is the localisation surface the facade needs. *i18n.Translator
// satisfies it.
type Translator interface {
	T(key string, args ...interface{}) string
	Help() string
}
