package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/roomradar/roomradar/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	// Location resolves to a [lng, lat] pair, matching the REST wire format.
	locationField := &graphql.Field{
		Type: graphql.NewList(graphql.Float),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			var loc *domain.GeoPoint
			switch src := p.Source.(type) {
			case domain.Listing:
				loc = src.Location
			case *domain.Listing:
				loc = src.Location
			}
			if loc == nil {
				return nil, nil
			}
			return []float64{loc.Lon, loc.Lat}, nil
		},
	}

	imageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ListingImage",
		Fields: graphql.Fields{
			"url": &graphql.Field{Type: graphql.String},
			"id":  &graphql.Field{Type: graphql.String},
		},
	})

	listingType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Listing",
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.String},
			"title":          &graphql.Field{Type: graphql.String},
			"rent":           &graphql.Field{Type: graphql.Float},
			"address":        &graphql.Field{Type: graphql.String},
			"description":    &graphql.Field{Type: graphql.String},
			"contact_number": &graphql.Field{Type: graphql.String},
			"images":         &graphql.Field{Type: graphql.NewList(imageType)},
			"location":       locationField,
			"owner_id":       &graphql.Field{Type: graphql.String},
			"distance":       &graphql.Field{Type: graphql.Float},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"listings": &graphql.Field{
				Type:        graphql.NewList(listingType),
				Description: "List all listings, optionally filtered by owner",
				Args: graphql.FieldConfigArgument{
					"owner_id": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ownerID := p.Args["owner_id"].(string)
					return deps.Listings.List(p.Context, ownerID)
				},
			},
			"listing": &graphql.Field{
				Type:        listingType,
				Description: "Get a listing by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					return deps.Listings.Get(p.Context, id)
				},
			},
			"searchListings": &graphql.Field{
				Type:        graphql.NewList(listingType),
				Description: "Find listings within a radius of a point, nearest first",
				Args: graphql.FieldConfigArgument{
					"lng":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lat":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radius": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 5000.0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					lng := p.Args["lng"].(float64)
					lat := p.Args["lat"].(float64)
					radius := p.Args["radius"].(float64)

					center, err := domain.NewGeoPoint(lng, lat)
					if err != nil {
						return nil, err
					}
					return deps.Search.Search(p.Context, domain.SearchQuery{
						Center:       center,
						RadiusMeters: radius,
					})
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
