// Package shopify handles the app's side of the Shopify integration:
// verifying webhook requests and reacting to installs and uninstalls.
package shopify
