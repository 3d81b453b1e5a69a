// Package config provides configuration parsing for the site tooling.
//
// The configuration is stored in site.json (or site.yaml) at the project
// root. This package handles loading, saving, and validating it.
//
// # Configuration File Structure
//
//	{
//	  "contact": {
//	    "nameMinLength": 2,
//	    "messageMinLength": 10,
//	    "rememberName": true,
//	    "subjects": [
//	      {"value": "general", "label": "Загальне питання"},
//	      {"value": "recipe", "label": "Питання про рецепт"}
//	    ]
//	  },
//	  "pref": {
//	    "backend": "file",
//	    "path": ".site/prefs.json",
//	    "nameKey": "contactName"
//	  },
//	  "preview": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "staticDir": "public"
//	  },
//	  "metrics": {"namespace": "site"},
//	  "log": {"level": "info", "format": "text"}
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rules := contact.DefaultRules(cfg.RuleOptions())
package config
