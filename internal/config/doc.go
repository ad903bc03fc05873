// Package config loads miniframe.json.
//
// The file is optional. Every field has a default, and command-line flags
// override file values:
//
//	{
//	  "name": "todo",
//	  "mount":   {"rootId": "root", "title": "TodoMVC"},
//	  "router":  {"defaultRoute": "home", "initialHash": "completed"},
//	  "preview": {"host": "localhost", "port": 3000, "metrics": true},
//	  "publish": {"bucket": "my-site", "prefix": "todo/", "region": "us-east-1"},
//	  "log":     {"level": "info", "format": "text"}
//	}
package config
