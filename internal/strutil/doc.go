// Package strutil holds small string helpers shared by the demo and the
// storage codec.
package strutil
