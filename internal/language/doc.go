// Package language normalizes the target language codes users pass to
// subtitle translation.
//
// Common ISO 639-1/639-2 codes and English words ("eng", "english") map to
// their 2-letter form through a small table; anything else must parse as a
// BCP 47 tag via golang.org/x/text/language.
package language
