// Package trophy maps Henley trophy names to boat classes.
//
// The lookup table is an ordered list of name fragments. Published trophy names vary
// in abbreviation and punctuation between editions, so a trophy resolves to the boat
// class of the first fragment it contains rather than by exact key. Entry order is
// significant and is preserved from the YAML resource, duplicates included.
package trophy
