// Package pkg holds the libraries behind skelstore, a transactional store
// for neuron skeletons that several proofreaders edit at once.
//
// # Layout
//
//   - [model]: node ids, links, packed sample attributes and properties
//   - [delta]: patch payloads and the commit file codec
//   - [skeleton]: the graph store with its staging overlay, merge,
//     topology and filter engines, and Reader/Loader/Updater scopes
//   - [history]: commit persistence on disk, in memory or in MongoDB
//   - [io]: JSON snapshots and SWC export
//   - [render]: DOT, SVG and snapshot exports
//   - [cache]: snapshot and export caching on disk or in Redis
//   - [config]: TOML and environment settings
//   - [errors]: coded errors shared by every package
//   - [observability]: commit, cache and HTTP hooks with a Prometheus backend
//
// # Data Flow
//
//	commit files ([history])
//	         ↓
//	    [delta] decode
//	         ↓
//	    [skeleton] Loader.Apply → Updater.Apply
//	         ↓
//	    snapshot ([io]) / export ([render])
//
// [model]: github.com/Aishwarya3011/gapr-sub000/pkg/model
// [delta]: github.com/Aishwarya3011/gapr-sub000/pkg/delta
// [skeleton]: github.com/Aishwarya3011/gapr-sub000/pkg/skeleton
// [history]: github.com/Aishwarya3011/gapr-sub000/pkg/history
// [io]: github.com/Aishwarya3011/gapr-sub000/pkg/io
// [render]: github.com/Aishwarya3011/gapr-sub000/pkg/render
// [cache]: github.com/Aishwarya3011/gapr-sub000/pkg/cache
// [config]: github.com/Aishwarya3011/gapr-sub000/pkg/config
// [errors]: github.com/Aishwarya3011/gapr-sub000/pkg/errors
// [observability]: github.com/Aishwarya3011/gapr-sub000/pkg/observability
package pkg
