package store

const (
	BackendFile     = "file"
	BackendDynamoDB = "dynamodb"

	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatBSON = "bson"

	maxShards = 256
)

// Config holds configuration for the Store.
type Config struct {
	// Backend selects where snapshots are kept: BackendFile or BackendDynamoDB.
	// Default: "file"
	Backend string

	// DataDir is the directory holding one snapshot file per extent.
	// Default: "data"
	DataDir string

	// Format is the snapshot file encoding: FormatYAML, FormatJSON or FormatBSON.
	// Default: "yaml"
	Format string

	// Table is the DynamoDB table holding extent rows.
	// Default: "restaurant_extents"
	Table string

	// NumShards is the number of partition keys the rows of one extent are
	// spread over in DynamoDB. Loads query every shard in parallel.
	// Default: 1 (no sharding, single query)
	// Max: 256
	NumShards int
}

// DefaultConfig returns a file-backed YAML configuration.
func DefaultConfig() Config {
	return Config{
		Backend:   BackendFile,
		DataDir:   "data",
		Format:    FormatYAML,
		Table:     "restaurant_extents",
		NumShards: 1,
	}
}

// validate fills in defaults and clamps values to acceptable bounds.
func (c *Config) validate() {
	if c.Backend == "" {
		c.Backend = BackendFile
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.Format == "" {
		c.Format = FormatYAML
	}
	if c.Table == "" {
		c.Table = "restaurant_extents"
	}
	if c.NumShards < 1 {
		c.NumShards = 1
	}
	if c.NumShards > maxShards {
		c.NumShards = maxShards
	}
}
