package bip39

import "strings"

// wordsPerList is fixed by BIP-0039: 2^11 indices, 11 bits per word.
const wordsPerList = 2048

// wordlist is the concrete backing store for one language: a fixed,
// NFKD-normalized 2048-entry table plus its perfect inverse index. It
// implements the contract of spec.md section 4.1 (word_of / index_of) in
// O(1) average time via the inverse map.
type wordlist struct {
	name    string
	words   [wordsPerList]string
	indexOf map[string]uint16
}

func newWordlist(name, data string) *wordlist {
	fields := strings.Fields(data)
	if len(fields) != wordsPerList {
		panic("bip39: wordlist " + name + " does not contain 2048 entries")
	}
	wl := &wordlist{name: name, indexOf: make(map[string]uint16, wordsPerList)}
	for i, w := range fields {
		wl.words[i] = w
		wl.indexOf[w] = uint16(i)
	}
	return wl
}

func (wl *wordlist) wordAt(i int) (string, bool) {
	if i < 0 || i >= wordsPerList {
		return "", false
	}
	return wl.words[i], true
}

func (wl *wordlist) indexOfWord(w string) (int, bool) {
	i, ok := wl.indexOf[w]
	return int(i), ok
}

// Language is a runtime handle over a wordlist that erases its concrete
// language at compile time: two function values plus an identity token for
// equality, exactly as spec.md section 4.1 asks for ("Runtime language
// selection"). Callers that know the language at compile time can still use
// the package-level constants below directly.
type Language struct {
	id    *wordlist
	name  string
	WordAt func(i int) (string, bool)
	IndexOf func(w string) (int, bool)
}

func languageFor(wl *wordlist) Language {
	return Language{
		id:      wl,
		name:    wl.name,
		WordAt:  wl.wordAt,
		IndexOf: wl.indexOfWord,
	}
}

// Equal compares two Language handles by identity of the backing wordlist,
// not by name or content: copies of one handle are equal, but two
// RegisterLanguage calls over the same word data yield unequal handles.
func (l Language) Equal(other Language) bool {
	return l.id == other.id
}

// String returns the language's display name (e.g. "english").
func (l Language) String() string {
	return l.name
}

var english = newWordlist("english", englishWordData)

// English is the BIP-0039 English wordlist handle, the only bundled
// language in this module (spec.md section 1 keeps additional wordlist
// data files out of scope; RegisterLanguage lets a caller supply more).
var English = languageFor(english)

// RegisterLanguage builds a runtime Language handle from a caller-supplied
// 2048-word, space/newline separated, NFKD-normalized table. It panics if
// the table does not contain exactly 2048 unique entries, matching the
// invariant in spec.md section 4.1.
func RegisterLanguage(name, data string) Language {
	wl := newWordlist(name, data)
	if len(wl.indexOf) != wordsPerList {
		panic("bip39: wordlist " + name + " contains duplicate entries")
	}
	return languageFor(wl)
}
