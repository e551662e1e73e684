package registry

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// schemaSDL is the subset of the registry GraphQL schema the reader relies on.
// The versions connection is ordered by creation time, newest first.
const schemaSDL = `
type Query {
	repository(owner: String!, name: String!): Repository
}

type Repository {
	packages(first: Int, last: Int, names: [String]): PackageConnection!
}

type PackageConnection {
	edges: [PackageEdge]
}

type PackageEdge {
	node: Package
}

type Package {
	id: ID!
	name: String!
	versions(first: Int, last: Int): PackageVersionConnection!
}

type PackageVersionConnection {
	edges: [PackageVersionEdge]
}

type PackageVersionEdge {
	node: PackageVersion
}

type PackageVersion {
	id: ID!
	version: String!
}
`

//nolint:gochecknoglobals
var registrySchema = gqlparser.MustLoadSchema(&ast.Source{Name: "registry.graphql", Input: schemaSDL})

// Query is a named operation validated against the registry schema.
type Query struct {
	Name     string
	Document string
}

// ValidateQuery parses the document and validates it against the registry schema.
func ValidateQuery(document string) (*ast.QueryDocument, error) {
	doc, errList := gqlparser.LoadQuery(registrySchema, document)
	if len(errList) != 0 {
		messages := make([]string, 0, len(errList))

		for _, err := range errList {
			messages = append(messages, err.Message)
		}

		return nil, fmt.Errorf("invalid graphql document: %s", strings.Join(messages, "; ")) //nolint: err113
	}

	return doc, nil
}

// MustParseQuery panics if the document is not a single valid named operation.
func MustParseQuery(document string) Query {
	doc, err := ValidateQuery(document)
	if err != nil {
		panic(err)
	}

	if len(doc.Operations) != 1 || doc.Operations[0].Name == "" {
		panic("graphql document must hold exactly one named operation")
	}

	return Query{Name: doc.Operations[0].Name, Document: document}
}
