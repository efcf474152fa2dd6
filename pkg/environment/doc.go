// Package environment names the deployment environments an application can
// run in and parses them from configuration values.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	if env.IsProduction() {
//	    // ...
//	}
package environment
