package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	logger "psh/internal/log"
)

const DefaultHost = "api.platform.example.com"
const EnvTokenVariableName = "PSH_TOKEN"

var ErrNotFound = errors.New("not found")

// ProjectDescriptor is the resolved identity of a remote project. Owned by
// the caller once resolved; the provisioning core only reads it.
type ProjectDescriptor struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	GitURL string `json:"git_url"`
	Host   string `json:"-"`
}

type Environment struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// Active reports whether the environment is eligible for activation on the
// remote side. Inactive environments are still listed and selectable.
func (e Environment) Active() bool {
	return e.Status == "active"
}

/* Client manages access to the platform API.
It sits at the boundary to external data - all methods are synchronous
single round-trips, no caching or retries.
*/

type Client struct {
	host  string
	token string
}

func NewClient(token, host string) *Client {
	return &Client{
		host:  host,
		token: token,
	}
}

func RetrieveTokenFromEnv() string {
	return os.Getenv(EnvTokenVariableName)
}

func (c Client) url() string {
	return fmt.Sprintf("https://%s/api/v1", c.host)
}

// ResolveProject turns a project identifier into a full descriptor, or
// ErrNotFound when the platform does not know the identifier.
func (c Client) ResolveProject(id string) (*ProjectDescriptor, error) {
	descriptor, err := apiGet[*ProjectDescriptor](c.token, fmt.Sprintf("%s/projects/%s", c.url(), id))
	if err != nil {
		return nil, err
	}
	descriptor.Host = c.host
	return descriptor, nil
}

// Environments returns the project's known environments keyed by identifier.
func (c Client) Environments(projectID string) (map[string]Environment, error) {
	environments, err := apiGet[[]Environment](c.token, fmt.Sprintf("%s/projects/%s/environments", c.url(), projectID))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]Environment, len(environments))
	for _, environment := range environments {
		byID[environment.ID] = environment
	}
	return byID, nil
}

func apiGet[T any](token string, url string) (T, error) {
	var emptyResult T
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return emptyResult, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return emptyResult, err
	}
	defer func(body io.ReadCloser) {
		err := body.Close()
		if err != nil {
			logger.Log.Errorf("Failed to close response body: %v", err)
		}
	}(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return emptyResult, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return emptyResult, fmt.Errorf("platform API request on %s failed with status: %s", url, resp.Status)
	}

	var decodedResult T
	if err := json.NewDecoder(resp.Body).Decode(&decodedResult); err != nil {
		return emptyResult, err
	}

	return decodedResult, nil
}
