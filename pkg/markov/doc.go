/*
Package markov provides a small first-order Markov chain text generator.

A Chain learns which words follow which from plain text, then walks those
transitions at random to produce new text. Transitions live in a Table;
MemoryTable is the default and SQLTable keeps the same data in a SQL
database for callers that already hold one.

Training text is cleaned with the cleaning package. Sentence-ending
punctuation becomes the EndOfSentence token, which generation turns back
into punctuation and a line break.
*/
package markov
