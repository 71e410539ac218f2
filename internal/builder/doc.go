// Package builder turns the ISBN International RangeMessage document into a
// validated range table and publishes it as the JSON artifact the resolver
// loads at startup.
package builder
