package rules

import (
	"path"
	"strings"
)

// Family is a test-double family.
type Family string

// Families, in match priority order.
const (
	FamilyMock Family = "mock"
	FamilySpy  Family = "spy"
	FamilyStub Family = "stub"
	FamilyFake Family = "fake"
)

type calleePattern struct {
	keyword string
	family  Family
}

// calleePatterns is evaluated in order; the first contained keyword wins, so a
// callee mentioning both "mock" and "spy" is classified as a mock.
var calleePatterns = []calleePattern{
	{"jest.mock", FamilyMock},
	{"vi.mock", FamilyMock},
	{"sinon.mock", FamilyMock},
	{"mock", FamilyMock},
	{"jest.spy", FamilySpy},
	{"vi.spy", FamilySpy},
	{"sinon.spy", FamilySpy},
	{"spy", FamilySpy},
	{"jest.stub", FamilyStub},
	{"vi.stub", FamilyStub},
	{"sinon.stub", FamilyStub},
	{"stub", FamilyStub},
	{"jest.fake", FamilyFake},
	{"vi.fake", FamilyFake},
	{"sinon.fake", FamilyFake},
	{"fake", FamilyFake},
}

// declaratorKeywords is deliberately looser than calleePatterns: it also
// catches factory calls such as jest.fn() or vi.fn().
var declaratorKeywords = []string{"fn", "mock", "spy"}

// defaultBannedModules are test-double libraries whose import is forbidden.
var defaultBannedModules = []string{
	"sinon",
	"jest-mock",
	"jest-mock-extended",
	"vitest-mock-extended",
	"ts-mockito",
	"testdouble",
}

// ClassifyCallee returns the family of the first keyword contained in text.
func ClassifyCallee(text string) (Family, bool) {
	for _, p := range calleePatterns {
		if strings.Contains(text, p.keyword) {
			return p.family, true
		}
	}

	return "", false
}

// ClassifyDeclaratorInit reports whether a declarator's initializer callee
// looks like a test-double factory.
func ClassifyDeclaratorInit(calleeText string) bool {
	for _, keyword := range declaratorKeywords {
		if strings.Contains(calleeText, keyword) {
			return true
		}
	}

	return false
}

// ClassifyImportSource reports whether specifier exactly names a banned module.
func ClassifyImportSource(specifier string, banned []string) bool {
	for _, name := range banned {
		if specifier == name {
			return true
		}
	}

	return false
}

// HasExtension reports whether the last segment of an import path carries any
// extension. Leading dots of the segment do not count, so "./.env" has none.
func HasExtension(importPath string) bool {
	base := strings.TrimLeft(path.Base(importPath), ".")
	if base == "" {
		return false
	}

	return path.Ext(base) != ""
}
