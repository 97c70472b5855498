// Package config loads the exporter configuration file (nc_exporter.yaml).
//
// Top-level types:
//   - Config{Nextcloud, Exporter}: full config tree parsed from YAML
//   - NextcloudConfig: url, username, password / password_env, timeout, tls;
//     Password() resolves the environment variable when one is named
//   - ExporterConfig: http_port, replacements (JSON file path),
//     watch_replacements
//
// Load(path) reads the YAML file, applies defaults (port 8000, 10s timeout,
// replacements.json), validates ports, timeouts and the URL, and resolves a
// relative replacements path against the config file's directory.
//
// Missing credentials or URL are not load errors: the exporter still starts
// and serves empty responses. Warnings() lists them so the operator can fix
// the file.
package config
