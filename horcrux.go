// horcrux.go: Package-level convenience surface over the default engine.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package horcrux

// Split splits the file at inputPath into total shards, any threshold of
// which can reconstruct it. Shards are returned, not written; pair with
// SaveHorcruxes to persist them.
//
// Example:
//
//	result, err := horcrux.Split("diary.txt", 5, 3)
//	if err != nil {
//		log.Fatal(err)
//	}
//	paths, err := horcrux.SaveHorcruxes(result.Horcruxes, ".")
func Split(inputPath string, total, threshold int) (*SplitResult, error) {
	return defaultEngine.SplitFile(inputPath, SplitOptions{Total: total, Threshold: threshold})
}

// SplitBuffer splits an in-memory payload recorded under filename.
func SplitBuffer(data []byte, filename string, opts SplitOptions) (*SplitResult, error) {
	return defaultEngine.SplitBuffer(data, filename, opts)
}

// Bind loads the shard files at paths, reconstructs the original payload,
// and writes it to outputPath.
//
// Example:
//
//	result, err := horcrux.Bind([]string{
//		"diary.txt.1_5.horcrux",
//		"diary.txt.2_5.horcrux",
//		"diary.txt.4_5.horcrux",
//	}, "diary.txt")
func Bind(paths []string, outputPath string) (*BindResult, error) {
	return defaultEngine.BindFiles(paths, outputPath, BindOptions{})
}

// BindHorcruxes reconstructs the original payload from in-memory shards.
func BindHorcruxes(shards []Horcrux, opts BindOptions) (*BindResult, error) {
	return defaultEngine.BindHorcruxes(shards, opts)
}

// SaveHorcruxes persists shards into outputDir and returns the written paths.
func SaveHorcruxes(shards []Horcrux, outputDir string) ([]string, error) {
	return defaultEngine.SaveHorcruxes(shards, outputDir)
}

// AutoBind discovers the single horcrux set in directory and binds it.
func AutoBind(directory string) (*BindResult, error) {
	return defaultEngine.AutoBind(directory)
}

// Inspect reports the metadata of the shard file at path.
func Inspect(path string) (*ShardInfo, error) {
	return defaultEngine.Inspect(path)
}
