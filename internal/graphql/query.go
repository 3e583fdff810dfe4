package graphql

import (
	"fmt"
	"sort"
	"strings"

	"contentbuild/internal/featureflags"
)

// Query is a named operation together with the fragments it spreads.
type Query struct {
	Name      string
	Operation string
	Uses      []*Fragment
}

// Document returns the operation followed by every fragment definition it
// needs.
func (q *Query) Document() string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(q.Operation))
	b.WriteString("\n\n")
	writeDefinitions(&b, q.Uses, map[string]bool{})
	return b.String()
}

// HealthService is the service entity selection shared by the facility
// queries.
var HealthService = &Fragment{
	Name: "healthService",
	On:   "NodeRegionalHealthCareServiceDes",
	Selection: `
entityId
title
fieldBody {
  processed
}
fieldServiceNameAndDescripti {
  entity {
    ... on TaxonomyTermHealthCareServiceTaxonomy {
      name
      fieldHealthServiceApiId
      description {
        processed
      }
    }
  }
}`,
}

// FacilityQuery builds the local facility page query. With the regional
// health service flag on, services are read from fieldRegionalHealthService;
// otherwise from fieldClinicalHealthServices.
func FacilityQuery(flags featureflags.Set) *Query {
	services := "fieldClinicalHealthServices"
	if flags.On(featureflags.FieldRegionalHealthService) {
		services = "fieldRegionalHealthService"
	}
	op := fmt.Sprintf(`
query GetHealthCareLocalFacility($path: String!) {
  route(path: $path) {
    ... on EntityCanonicalUrl {
      entity {
        ... on NodeHealthCareLocalFacility {
          entityId
          title
          fieldFacilityLocatorApiId
          entityUrl {
            path
          }
          fieldLocationServices {
            entity {
              ... on ParagraphHealthCareLocalFacilityServi {
                fieldTitle
                %s {
                  entity {
                    %s
                  }
                }
              }
            }
          }
          %s
        }
      }
    }
  }
}`, services, HealthService.Spread(), strings.ReplaceAll(strings.TrimSpace(FieldRelatedLinks), "\n", "\n          "))
	return &Query{
		Name:      "facility",
		Operation: op,
		Uses:      []*Fragment{HealthService, ListOfLinkTeasers},
	}
}

// RelatedLinksQuery fetches the related links block of any node.
func RelatedLinksQuery() *Query {
	op := `
query GetRelatedLinks($path: String!) {
  route(path: $path) {
    ... on EntityCanonicalUrl {
      entity {
        ... on NodePage {
          ` + strings.ReplaceAll(strings.TrimSpace(FieldRelatedLinks), "\n", "\n          ") + `
        }
      }
    }
  }
}`
	return &Query{Name: "relatedLinks", Operation: op, Uses: []*Fragment{ListOfLinkTeasers}}
}

// Queries returns every query document for flags, keyed by name.
func Queries(flags featureflags.Set) map[string]*Query {
	qs := []*Query{FacilityQuery(flags), RelatedLinksQuery()}
	out := make(map[string]*Query, len(qs))
	for _, q := range qs {
		out[q.Name] = q
	}
	return out
}

// QueryNames lists the names accepted by Queries, sorted.
func QueryNames(flags featureflags.Set) []string {
	qs := Queries(flags)
	names := make([]string, 0, len(qs))
	for name := range qs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
