/*
Package catalog holds the keyed collection of validated decision trees.

Trees are authored as YAML documents (one tree per file), checked against a JSON
Schema reflected from the document types, decoded with mapstructure and finally
validated for integrity. A tree that fails any step is rejected when the catalog
is loaded, so traversal never meets broken data.
*/
package catalog
