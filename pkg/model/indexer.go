package model

// indexer interface is design to give a unique index to a combination of assignment's attributes and vice versa
type indexer interface {
	// Returns a unique index, in [0, professors*disciplines*slots), to a combination of assignment's attributes
	Index(professor, discipline, slot int) int
	// Returns a combination of assignment's attributes from a unique index
	Attributes(index int) (professor, discipline, slot int)
	// Returns the number of distinct indices
	Size() int
}

func newIndexer(professors, disciplines, slots int) indexer {
	return &indexerImplementation{
		professors:  professors,
		disciplines: disciplines,
		slots:       slots,
	}
}
