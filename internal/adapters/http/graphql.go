package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/slashexp/experiences/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	experienceType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Experience",
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.String},
			"provider_id":    &graphql.Field{Type: graphql.String},
			"title":          &graphql.Field{Type: graphql.String},
			"description":    &graphql.Field{Type: graphql.String},
			"image_url":      &graphql.Field{Type: graphql.String},
			"price":          &graphql.Field{Type: graphql.Int},
			"location":       &graphql.Field{Type: graphql.String},
			"latitude":       &graphql.Field{Type: graphql.Float},
			"longitude":      &graphql.Field{Type: graphql.Float},
			"duration":       &graphql.Field{Type: graphql.String},
			"participants":   &graphql.Field{Type: graphql.Int},
			"category":       &graphql.Field{Type: graphql.String},
			"niche_category": &graphql.Field{Type: graphql.String},
			"trending":       &graphql.Field{Type: graphql.Boolean},
			"featured":       &graphql.Field{Type: graphql.Boolean},
			"romantic":       &graphql.Field{Type: graphql.Boolean},
			"adventurous":    &graphql.Field{Type: graphql.Boolean},
			"group_activity": &graphql.Field{Type: graphql.Boolean},
			"distance_km":    &graphql.Field{Type: graphql.Float},
		},
	})

	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"slug":        &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"image_url":   &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"experiences": &graphql.Field{
				Type:        graphql.NewList(experienceType),
				Description: "List catalog experiences with optional filters",
				Args: graphql.FieldConfigArgument{
					"category":  &graphql.ArgumentConfig{Type: graphql.String},
					"min_price": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"max_price": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := domain.ExperienceFilter{
						MinPrice: p.Args["min_price"].(int),
						MaxPrice: p.Args["max_price"].(int),
					}
					if cat, ok := p.Args["category"].(string); ok {
						filter.Category = cat
					}
					return deps.Catalog.List(p.Context, filter)
				},
			},
			"experience": &graphql.Field{
				Type:        experienceType,
				Description: "Get an experience by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Catalog.GetByID(p.Context, p.Args["id"].(string))
				},
			},
			"searchExperiences": &graphql.Field{
				Type:        graphql.NewList(experienceType),
				Description: "Fuzzy search on titles and descriptions",
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Catalog.Search(p.Context, p.Args["query"].(string), p.Args["limit"].(int))
				},
			},
			"nearbyExperiences": &graphql.Field{
				Type:        graphql.NewList(experienceType),
				Description: "Experiences ranked by distance from a point",
				Args: graphql.FieldConfigArgument{
					"lat":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radius_km": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 0.0},
					"limit":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					point := domain.GeoPoint{
						Lat: p.Args["lat"].(float64),
						Lon: p.Args["lon"].(float64),
					}
					return deps.Discovery.NearPoint(p.Context, point,
						domain.ExperienceFilter{}, p.Args["radius_km"].(float64), p.Args["limit"].(int))
				},
			},
			"categories": &graphql.Field{
				Type:        graphql.NewList(categoryType),
				Description: "List browse categories",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Categories.List(p.Context)
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
