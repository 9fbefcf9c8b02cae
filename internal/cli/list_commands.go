package cli

import (
	"context"
	"fmt"

	"qikfiller/internal/api"
	"qikfiller/internal/domain"
)

// listPrinter prints the full typed listing for one reference kind
type listPrinter func(ctx context.Context) error

// ListCommand handles the flat listing commands (users, clients, categories,
// tag-types, types). Without a filter the full typed listing is printed;
// with one, matching id/name rows.
type ListCommand struct {
	api   api.API
	kind  domain.Kind
	print listPrinter
}

// NewListCommand creates a listing handler for one kind
func NewListCommand(apiInstance api.API, kind domain.Kind, print listPrinter) *ListCommand {
	return &ListCommand{api: apiInstance, kind: kind, print: print}
}

// Execute runs the listing
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.print(ctx)
	}

	refs, err := c.api.FindReferences(ctx, c.kind, args[0])
	if err != nil {
		return err
	}
	for _, ref := range refs {
		fmt.Println(ref)
	}
	return nil
}

func printUsers(apiInstance api.API) listPrinter {
	return func(ctx context.Context) error {
		users, err := apiInstance.ListUsers(ctx)
		if err != nil {
			return err
		}
		for _, user := range users {
			fmt.Printf("%d: %s (%s, %s)\n", user.ID, user.Name, user.Login, user.Email)
		}
		return nil
	}
}

func printClients(apiInstance api.API) listPrinter {
	return func(ctx context.Context) error {
		clients, err := apiInstance.ListClients(ctx)
		if err != nil {
			return err
		}
		for _, client := range clients {
			fmt.Printf("%d: %s\n", client.ID, client.Name)
		}
		return nil
	}
}

func printCategories(apiInstance api.API) listPrinter {
	return func(ctx context.Context) error {
		categories, err := apiInstance.ListCategories(ctx)
		if err != nil {
			return err
		}
		for _, category := range categories {
			fmt.Printf("%d: %s\n", category.ID, category.Name)
		}
		return nil
	}
}

func printTagTypes(apiInstance api.API) listPrinter {
	return func(ctx context.Context) error {
		tagTypes, err := apiInstance.ListTagTypes(ctx)
		if err != nil {
			return err
		}
		for _, tagType := range tagTypes {
			if tagType.Description != "" {
				fmt.Printf("%d: %s - %s\n", tagType.ID, tagType.Name, tagType.Description)
			} else {
				fmt.Printf("%d: %s\n", tagType.ID, tagType.Name)
			}
		}
		return nil
	}
}

func printEntryTypes(apiInstance api.API) listPrinter {
	return func(ctx context.Context) error {
		entryTypes, err := apiInstance.ListEntryTypes(ctx)
		if err != nil {
			return err
		}
		for _, entryType := range entryTypes {
			status := "enabled"
			if !entryType.Enabled {
				status = "disabled"
			}
			fmt.Printf("%d: %s (%s)\n", entryType.ID, entryType.Name, status)
		}
		return nil
	}
}
