package searcher

// Planning defaults

const DefaultDepth = 3

// No wall-clock budget unless one is configured
const DefaultDuration = 0
