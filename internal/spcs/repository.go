package spcs

import (
	"context"
	"fmt"
)

// ImageRepository describes an image repository and its registry URL.
type ImageRepository struct {
	Name string
	URL  string
}

// EnsureImageRepository creates an image repository if it does not exist.
func (c *Client) EnsureImageRepository(ctx context.Context, name string) error {
	id, err := ident(name)
	if err != nil {
		return err
	}
	return c.q.Exec(ctx, fmt.Sprintf("CREATE IMAGE REPOSITORY IF NOT EXISTS %s", id))
}

// ListImageRepositories returns the repositories in the current schema.
func (c *Client) ListImageRepositories(ctx context.Context) ([]ImageRepository, error) {
	rows, err := c.q.Query(ctx, "SHOW IMAGE REPOSITORIES")
	if err != nil {
		return nil, err
	}

	repos := make([]ImageRepository, 0, len(rows))
	for _, row := range rows {
		repos = append(repos, ImageRepository{
			Name: rowString(row, "name"),
			URL:  rowString(row, "repository_url"),
		})
	}
	return repos, nil
}

// RepositoryURL looks up the registry URL for a repository. Repository
// names compare case-insensitively since Snowflake uppercases unquoted
// identifiers.
func (c *Client) RepositoryURL(ctx context.Context, name string) (string, error) {
	if _, err := ident(name); err != nil {
		return "", err
	}

	repos, err := c.ListImageRepositories(ctx)
	if err != nil {
		return "", err
	}

	for _, repo := range repos {
		if equalFoldIdent(repo.Name, name) {
			return repo.URL, nil
		}
	}
	return "", fmt.Errorf("image repository %s not found", name)
}
