// Package insert implements the maintenance commands that write to a store:
// init creates the schema, insert adds countries, towns and roads.
package insert
