package metadata

// RecordRegistry answers "is this path inside a provisioned project?" by
// reading the per-directory project records, so the nesting guard does not
// depend on anything held in process state.
type RecordRegistry struct{}

func (RecordRegistry) FindEnclosingRoot(path string) (string, bool) {
	root, _, found := FindEnclosingRoot(path)
	return root, found
}
