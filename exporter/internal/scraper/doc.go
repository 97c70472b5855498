// Package scraper fetches the Nextcloud serverinfo status page.
//
// New(config.NextcloudConfig) builds one *http.Client with the basic-auth
// round tripper and TLS options and reuses it for every Fetch. Fetch returns
// the raw XML body on HTTP 200 and an error for anything else; the caller
// decides what an error means for the response.
package scraper
