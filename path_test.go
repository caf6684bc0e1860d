package vissim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathString(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"collection", NewPath("links"), "./links"},
		{"entity", NewPath("links").Child("link").Where("no", 5), `./links/link[@no="5"]`},
		{"nested", NewPath("links").Child("link").Where("no", 5).Child("lanes").Child("lane"), `./links/link[@no="5"]/lanes/lane`},
		{"two predicates", NewPath("links", "link").Where("name", "Main").Where("level", 1), `./links/link[@name="Main"][@level="1"]`},
		{"quoted value", NewPath("links", "link").Where("name", `a"b`), `./links/link[@name='a"b']`},
		{"root predicate", NewPath().Where("version", "8.00").Child("links"), `.[@version="8.00"]/links`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestPathImmutable(t *testing.T) {
	base := NewPath("links", "link")
	first := base.Where("no", 1)
	second := base.Where("no", 2)
	assert.Equal(t, "./links/link", base.String())
	assert.Equal(t, `./links/link[@no="1"]`, first.String())
	assert.Equal(t, `./links/link[@no="2"]`, second.String())

	lanes := first.Child("lanes")
	geometry := first.Child("geometry")
	assert.Equal(t, `./links/link[@no="1"]/lanes`, lanes.String())
	assert.Equal(t, `./links/link[@no="1"]/geometry`, geometry.String())
}

func TestPathResolve(t *testing.T) {
	doc := loadNetwork(t)

	all := NewPath("links", "link").resolve(doc.root())
	require.Len(t, all, 7)
	nos := make([]string, len(all))
	for i, el := range all {
		nos[i] = el.SelectAttrValue("no", "")
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "10000", "10001", "10002"}, nos)

	named := NewPath("links", "link").Where("name", "Main").resolve(doc.root())
	assert.Len(t, named, 2)

	lanes := NewPath("links", "link", "lanes", "lane").resolve(doc.root())
	assert.Len(t, lanes, 8)

	assert.Empty(t, NewPath("links", "link").Where("no", 404).resolve(doc.root()))
	assert.Empty(t, NewPath("nothing").resolve(doc.root()))
}

func TestPathValuesAreNotQueries(t *testing.T) {
	doc, err := LoadFrom(strings.NewReader(`<network><links>
		<link no="1" name="plain"/>
		<link no="2" name='x" or @no="1'/>
	</links></network>`))
	require.NoError(t, err)

	found := NewPath("links", "link").Where("name", `x" or @no="1`).resolve(doc.root())
	require.Len(t, found, 1)
	assert.Equal(t, "2", found[0].SelectAttrValue("no", ""))

	assert.Empty(t, NewPath("links", "link").Where("no", `1" or "1"="1`).resolve(doc.root()))
}

func TestRootPredicate(t *testing.T) {
	doc := loadNetwork(t)

	_, err := doc.GetAttributes(NewPath().Where("no", 999))
	require.ErrorIs(t, err, ErrNotFound)

	attrs, err := doc.GetAttributes(NewPath().Where("version", "8.00"))
	require.NoError(t, err)
	assert.Equal(t, Attributes{"version": "8.00"}, attrs)

	base := NewPath()
	restricted := base.Where("version", "7.00")
	assert.Len(t, doc.GetChildren(base.Child("links").Child("link")), 7)
	assert.Empty(t, doc.GetChildren(restricted.Child("links").Child("link")))
}
