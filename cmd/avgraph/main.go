// Command avgraph wires and drains a small demo filter graph from the
// command line, in the teacher's flag+log style: no config file, no
// subcommands, one flat set of flags describing one run.
package main

import (
	"flag"
	"log"
	"strconv"

	"github.com/richinsley/avgraph/avfilter"
	"github.com/richinsley/avgraph/filters"
	"github.com/richinsley/avgraph/graph"
)

func main() {
	input := flag.String("input", "", "input media file for the movie source")
	width := flag.Int("width", 640, "scale output width")
	height := flag.Int("height", 480, "scale output height")
	chain := flag.String("chain", "", "override the default movie,scale,buffersink chain, e.g. 'movie=clip.mp4,scale=320:240,buffersink'")
	flag.Parse()

	if *input == "" && *chain == "" {
		log.Fatalf("avgraph: -input or -chain is required")
	}

	g := graph.New()

	chainStr := *chain
	if chainStr == "" {
		chainStr = "movie=" + *input + ",scale=" + strconv.Itoa(*width) + ":" + strconv.Itoa(*height) + ",buffersink"
	}

	insts, err := graph.ParseChainString(g, chainStr)
	if err != nil {
		log.Fatalf("avgraph: building chain: %v", err)
	}

	sink := insts[len(insts)-1]
	if _, err := avfilter.ConfigureLinks(sink); err != nil {
		log.Fatalf("avgraph: configuring graph: %v", err)
	}

	nframes := 0
	for {
		if err := avfilter.RequestFrame(sink.Inputs[0]); err != nil {
			if !avfilter.IsEOF(err) {
				log.Printf("avgraph: request_frame: %v", err)
			}
			break
		}
		f, ok := filters.PullFrame(sink)
		if !ok {
			break
		}
		nframes++
		f.Release()
	}
	log.Printf("avgraph: drained %d frames", nframes)
}
