package pathutil

import "strings"

// Component reference prefixes for OpenRPC documents.
const (
	RefPrefixSchemas            = "#/components/schemas/"
	RefPrefixContentDescriptors = "#/components/contentDescriptors/"
	RefPrefixErrors             = "#/components/errors/"
	RefPrefixExamples           = "#/components/examples/"
	RefPrefixExamplePairings    = "#/components/examplePairingObjects/"
	RefPrefixTags               = "#/components/tags/"
)

// SchemaRef builds "#/components/schemas/{name}".
func SchemaRef(name string) string {
	return RefPrefixSchemas + EscapeToken(name)
}

// ContentDescriptorRef builds "#/components/contentDescriptors/{name}".
func ContentDescriptorRef(name string) string {
	return RefPrefixContentDescriptors + EscapeToken(name)
}

// ErrorRef builds "#/components/errors/{name}".
func ErrorRef(name string) string {
	return RefPrefixErrors + EscapeToken(name)
}

// ExampleRef builds "#/components/examples/{name}".
func ExampleRef(name string) string {
	return RefPrefixExamples + EscapeToken(name)
}

// ExamplePairingRef builds "#/components/examplePairingObjects/{name}".
func ExamplePairingRef(name string) string {
	return RefPrefixExamplePairings + EscapeToken(name)
}

// TagRef builds "#/components/tags/{name}".
func TagRef(name string) string {
	return RefPrefixTags + EscapeToken(name)
}

// IsLocalRef reports whether ref is a same-document fragment pointer.
func IsLocalRef(ref string) bool {
	return strings.HasPrefix(ref, "#")
}

// SplitPointer strips the leading "#" and splits the remainder into unescaped
// tokens. "#" and "#/" both address the root and yield no tokens.
func SplitPointer(ref string) []string {
	ref = strings.TrimPrefix(ref, "#")
	if ref == "" || ref == "/" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(ref, "/"), "/")
	for i, part := range parts {
		parts[i] = UnescapeToken(part)
	}
	return parts
}

// JoinPointer escapes tokens and joins them into a "#/a/b" pointer.
func JoinPointer(tokens ...string) string {
	if len(tokens) == 0 {
		return "#"
	}
	var b strings.Builder
	b.WriteByte('#')
	for _, tok := range tokens {
		b.WriteByte('/')
		b.WriteString(EscapeToken(tok))
	}
	return b.String()
}

// EscapeToken escapes a pointer token per RFC 6901: "~" -> "~0", "/" -> "~1".
func EscapeToken(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

// UnescapeToken reverses EscapeToken. Per RFC 6901, ~1 is replaced before ~0.
func UnescapeToken(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}
