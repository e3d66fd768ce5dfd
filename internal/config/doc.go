// Package config provides configuration management for the query router.
//
// Process configuration is loaded from environment variables and validated on
// startup. All configuration options have sensible defaults for development.
//
// The routing catalog (categories, teams, suggestions, category rules, urgency
// keywords and the handler pool) is a YAML document. A default catalog is
// embedded in the binary; ROUTING_FILE points at a replacement.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	routing, err := config.LoadRouting(cfg.RoutingFile)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg)
package config
