package model

// Indices are sorted by professor, then discipline, then slot
type indexerImplementation struct {
	professors  int
	disciplines int
	slots       int
}

func (indexer *indexerImplementation) Index(professor, discipline, slot int) int {
	return slot + indexer.slots*discipline + indexer.slots*indexer.disciplines*professor
}

func (indexer *indexerImplementation) Attributes(index int) (professor, discipline, slot int) {
	slot = index % indexer.slots
	index = index / indexer.slots

	discipline = index % indexer.disciplines
	index = index / indexer.disciplines

	professor = index % indexer.professors

	return professor, discipline, slot
}

func (indexer *indexerImplementation) Size() int {
	return indexer.professors * indexer.disciplines * indexer.slots
}
