package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestExtractWholeWords(t *testing.T) {
	lx := MustLexicon([]string{"python", "django", "aws", "docker", "java"})

	got := lx.Extract("Senior Python Developer. Django, AWS, Docker required.")
	assert.ElementsMatch(t, []string{"python", "django", "aws", "docker"}, keys(got))
}

func TestExtractRejectsSubwords(t *testing.T) {
	lx := MustLexicon([]string{"python", "java", "go"})

	assert.Empty(t, lx.Extract("pythonic javascript going"))
}

func TestExtractSymbolEntries(t *testing.T) {
	lx := MustLexicon([]string{"c++", "c#", ".net", "ci/cd", "node.js", "c"})

	got := lx.Extract("We use C++ and C#, some .NET, a CI/CD pipeline and Node.js.")
	assert.ElementsMatch(t, []string{"c++", "c#", ".net", "ci/cd", "node.js", "c"}, keys(got))

	got = lx.Extract("nodexjs")
	assert.Empty(t, got, "dot must be literal")
}

func TestExtractMultiWordEntries(t *testing.T) {
	lx := MustLexicon([]string{"machine learning", "ruby on rails", "rails"})

	got := lx.Extract("Machine Learning engineer with Ruby on Rails")
	assert.ElementsMatch(t, []string{"machine learning", "ruby on rails", "rails"}, keys(got))
}

func TestExtractEmpty(t *testing.T) {
	lx := Default()
	assert.Empty(t, lx.Extract(""))
	assert.Empty(t, lx.Extract("   "))
	assert.Nil(t, lx.ExtractOrdered(""))
}

func TestExtractOrderedFollowsLexicon(t *testing.T) {
	lx := MustLexicon([]string{"sql", "python", "aws"})
	assert.Equal(t, []string{"sql", "python", "aws"}, lx.ExtractOrdered("aws python sql"))
}

func TestNewLexiconNormalizes(t *testing.T) {
	lx, err := NewLexicon([]string{" Python ", "python", "", "AWS"})
	require.NoError(t, err)

	assert.Equal(t, []string{"python", "aws"}, lx.Entries())
	assert.True(t, lx.Contains("PYTHON"))
	assert.False(t, lx.Contains("rust"))
}

func TestZeroLexiconMatchesNothing(t *testing.T) {
	var lx Lexicon
	assert.Empty(t, lx.Extract("python"))
	assert.Equal(t, 0, lx.Len())
}

func TestDefaultLexicon(t *testing.T) {
	lx := Default()
	got := lx.Extract("Data Scientist: python, pandas, scikit-learn and SQL")
	assert.ElementsMatch(t, []string{"python", "pandas", "scikit-learn", "sql"}, keys(got))
}
