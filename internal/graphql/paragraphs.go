package graphql

// LinkTeaser is the "Link teaser" bundle of the Paragraph entity type.
var LinkTeaser = &Fragment{
	Name: "linkTeaser",
	On:   "ParagraphLinkTeaser",
	Selection: `
entityId
parentFieldName
fieldLink {
  url {
    path
  }
  title
  options
}
fieldLinkSummary`,
}

// ListOfLinkTeasers is the "List of link teasers" bundle of the Paragraph
// entity type.
var ListOfLinkTeasers = &Fragment{
	Name: "listOfLinkTeasers",
	On:   "ParagraphListOfLinkTeasers",
	Selection: `
parentFieldName
fieldTitle
fieldVaParagraphs {
  entity {
    ` + LinkTeaser.Spread() + `
  }
}`,
	Requires: []*Fragment{LinkTeaser},
}

// FieldRelatedLinks selects the related links of a node.
var FieldRelatedLinks = `
fieldRelatedLinks {
  entity {
    ` + ListOfLinkTeasers.Spread() + `
  }
}`
