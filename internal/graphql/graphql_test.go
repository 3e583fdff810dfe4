package graphql

import (
	"strings"
	"testing"

	"contentbuild/internal/featureflags"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragmentDocumentOrdersDependenciesFirst(t *testing.T) {
	doc := ListOfLinkTeasers.Document()

	linkTeaser := strings.Index(doc, "fragment linkTeaser on ParagraphLinkTeaser {")
	list := strings.Index(doc, "fragment listOfLinkTeasers on ParagraphListOfLinkTeasers {")
	require.GreaterOrEqual(t, linkTeaser, 0)
	require.GreaterOrEqual(t, list, 0)
	assert.Less(t, linkTeaser, list)
	assert.Equal(t, 1, strings.Count(doc, "fragment linkTeaser "))
	assert.Contains(t, doc, "...linkTeaser")
	require.NoError(t, Validate(doc))
}

func TestSpreadAndSelection(t *testing.T) {
	assert.Equal(t, "...listOfLinkTeasers", ListOfLinkTeasers.Spread())
	assert.Contains(t, FieldRelatedLinks, "fieldRelatedLinks {")
	assert.Contains(t, FieldRelatedLinks, "...listOfLinkTeasers")
}

func TestSharedDependenciesAreEmittedOnce(t *testing.T) {
	a := &Fragment{Name: "a", On: "A", Selection: "id\n" + LinkTeaser.Spread(), Requires: []*Fragment{LinkTeaser}}
	b := &Fragment{Name: "b", On: "B", Selection: a.Spread() + "\n" + ListOfLinkTeasers.Spread(), Requires: []*Fragment{a, ListOfLinkTeasers}}

	doc := b.Document()
	assert.Equal(t, 1, strings.Count(doc, "fragment linkTeaser "))
	require.NoError(t, Validate(doc))
}

func TestFacilityQueryFollowsFlags(t *testing.T) {
	dev, err := featureflags.Enabled(featureflags.VAGovDev)
	require.NoError(t, err)
	off := featureflags.Set{featureflags.FieldRegionalHealthService: false}

	on := FacilityQuery(dev).Document()
	assert.Contains(t, on, "fieldRegionalHealthService {")
	assert.NotContains(t, on, "fieldClinicalHealthServices")
	require.NoError(t, Validate(on))

	legacy := FacilityQuery(off).Document()
	assert.Contains(t, legacy, "fieldClinicalHealthServices {")
	assert.NotContains(t, legacy, "fieldRegionalHealthService")
	require.NoError(t, Validate(legacy))
}

func TestQueriesAreValid(t *testing.T) {
	flags, err := featureflags.Enabled(featureflags.VAGovProd)
	require.NoError(t, err)

	assert.Equal(t, []string{"facility", "relatedLinks"}, QueryNames(flags))
	for name, q := range Queries(flags) {
		assert.NoError(t, Validate(q.Document()), name)
	}
}

func TestValidateRejectsBrokenDocuments(t *testing.T) {
	err := Validate(`query Q { node { ...missing } }`)
	assert.ErrorIs(t, err, ErrFragmentUndefined)
	assert.Contains(t, err.Error(), "missing")

	dup := LinkTeaser.Definition() + "\n" + LinkTeaser.Definition()
	assert.ErrorIs(t, Validate(dup), ErrDuplicateFragment)

	assert.Error(t, Validate(`query {`))
}
