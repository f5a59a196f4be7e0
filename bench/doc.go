// Package bench runs every enabled codec against every discovered file.
//
// One Task covers one file. Inside a task the codecs run sequentially in the
// order they were selected; across tasks Run fans out to a bounded worker
// pool. Each (file, codec) pair writes to its own output path:
//
//	<outDir>/<codec>/<relative path><codec extension>
//
// so workers never contend for a destination. An existing output is reused
// unless Policy.Force is set, which makes an interrupted run resumable.
package bench
