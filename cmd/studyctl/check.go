package main

import (
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
)

var checkEndpoints = []string{
	"/api/knowledge-base",
	"/api/prompts",
	"/api/practice-history",
	"/api/dialogue-phrases",
}

// runCheck fetches every resource from a running service and reports the
// HTTP status per endpoint. It returns false when any fetch is not a 200.
func runCheck(apiURL string, out io.Writer) (bool, error) {
	client := resty.New().
		SetBaseURL(apiURL).
		SetHeader("Accept", "application/json").
		SetTimeout(10 * time.Second)

	allOK := true
	for _, endpoint := range checkEndpoints {
		resp, err := client.R().Get(endpoint)
		if err != nil {
			fmt.Fprintf(out, "ERROR   %s (%v)\n", endpoint, err)
			allOK = false
			continue
		}
		if resp.IsSuccess() {
			fmt.Fprintf(out, "OK      %s\n", endpoint)
			continue
		}
		allOK = false
		fmt.Fprintf(out, "HTTP %d %s\n", resp.StatusCode(), endpoint)
		if body := resp.String(); body != "" {
			fmt.Fprintf(out, "        %s\n", body)
		}
	}
	return allOK, nil
}
