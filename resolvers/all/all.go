// Package all registers every built-in resolver with the default registry.
package all

import (
	_ "github.com/hfranklin/reddit-archiver/resolvers/direct"
	_ "github.com/hfranklin/reddit-archiver/resolvers/gfycat"
	_ "github.com/hfranklin/reddit-archiver/resolvers/imgur"
	_ "github.com/hfranklin/reddit-archiver/resolvers/redgifs"
	_ "github.com/hfranklin/reddit-archiver/resolvers/youtube"
)
