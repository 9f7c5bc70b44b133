// Package models holds the gorm persistence models of the partner directory.
// Each model maps to one table and converts to and from its domain entity
// with ToDomain and FromDomain.
package models
