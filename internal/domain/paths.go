package domain

import "path/filepath"

type DataFile string

const (
	RawFile     DataFile = "raw/top_anime.json"
	CleanFile   DataFile = "processed/top_anime_clean.csv"
	FeatureFile DataFile = "processed/top_anime_features.csv"
	DatabaseDir DataFile = "processed"
	ProfileFile DataFile = "profile.yaml"
)

type DataPath string

// Paths holds all the file paths for anime data
type Paths struct {
	RootDir     string
	RawPath     DataPath
	CleanPath   DataPath
	FeaturePath DataPath
	DBDir       string
	ProfilePath DataPath
}

// NewPaths creates a new Paths instance with all paths initialized
func NewPaths(rootDir string) *Paths {
	rootDir = filepath.Join(rootDir, "data")
	return &Paths{
		RootDir:     rootDir,
		RawPath:     makeDataPath(rootDir, RawFile),
		CleanPath:   makeDataPath(rootDir, CleanFile),
		FeaturePath: makeDataPath(rootDir, FeatureFile),
		DBDir:       string(makeDataPath(rootDir, DatabaseDir)),
		ProfilePath: makeDataPath(rootDir, ProfileFile),
	}
}

func makeDataPath(rootDir string, f DataFile) DataPath {
	return DataPath(filepath.Join(rootDir, string(f)))
}
