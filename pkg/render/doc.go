// Package render turns a skeleton store into files.
//
// [Export] dispatches on a format name: "json" and "swc" write snapshots
// through [github.com/Aishwarya3011/gapr-sub000/pkg/io], while "dot" and
// "svg" draw the topology through the [nodelink] subpackage.
//
// [nodelink]: github.com/Aishwarya3011/gapr-sub000/pkg/render/nodelink
package render
