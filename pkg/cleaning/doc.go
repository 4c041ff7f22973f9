/*
Package cleaning provides the text normalizer used to prepare raw corpus
text for tokenization.

Every function is a pure, deterministic string transformation. The word
and whitespace classes are Unicode-aware, so accented letters and
non-Latin scripts survive punctuation stripping.
*/
package cleaning
