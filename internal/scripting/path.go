package scripting

// Namespace is the resource directory holding portal scripts.
const Namespace = "portal/"

// ResourcePath derives the resource path of a portal script. ext includes the
// leading dot. The result is also the cache key.
func ResourcePath(name, ext string) string {
	return Namespace + name + ext
}
