// Command inlay turns an image folder plus a CSV catalogue into a base64
// lookup file, then searches it, injects it into HTML templates, inspects
// it, and serves it to a local asset explorer.
package main
