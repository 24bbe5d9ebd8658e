package labels

import spooky "github.com/dgryski/go-spooky"

// Seed derives a per-label training seed from the run seed. Labels train
// concurrently, so each needs its own random stream, and hashing the label
// identifier keeps the stream stable no matter how the label set changes
// around it.
func Seed(runSeed int64, label string) int64 {
	return runSeed ^ int64(spooky.Hash64([]byte(label)))
}
