package network

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// NetworkController is a thin JSON HTTP client for internal service
// dependencies.
type NetworkController struct {
	BaseUrl string
	Client  *http.Client
}

func (n *NetworkController) httpClient() *http.Client {
	if n.Client == nil {
		n.Client = &http.Client{Timeout: 30 * time.Second}
	}
	return n.Client
}

// Post sends a JSON body to the given path and returns the raw response
// body with the status code.
func (n *NetworkController) Post(path string, headers *map[string]string, body any) (*[]byte, *int, error) {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("could not encode request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s%s", n.BaseUrl, path), payload)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if headers != nil {
		for key, value := range *headers {
			req.Header.Set(key, value)
		}
	}

	res, err := n.httpClient().Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &res.StatusCode, err
	}
	return &responseBody, &res.StatusCode, nil
}
