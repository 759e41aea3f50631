package ports

// TreeHasher defines the interface for computing content hashes of build inputs.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type TreeHasher interface {
	// HashFile computes the content hash of a single file.
	HashFile(path string) (string, error)

	// HashTree computes a deterministic hash over every file beneath root:
	// identical trees hash identically regardless of walk timing or machine.
	HashTree(root string) (string, error)
}
