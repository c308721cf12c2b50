package database

// Storage interface represents the behavior required to be implemented by
// any package providing support for storing and reading the chain of blocks.
type Storage interface {
	Write(block Block) error
	GetBlock(num uint64) (Block, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by
// any package providing support to iterate over the blocks.
type Iterator interface {
	Next() (Block, error)
	Done() bool
}
