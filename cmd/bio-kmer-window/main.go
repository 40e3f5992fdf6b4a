package main

// See doc.go for documentation
import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/dnawindow/scan"
)

var (
	width   = flag.Int("width", scan.DefaultOpts.Width, "Sliding window width in bases")
	ks      = flag.String("k", joinKs(scan.DefaultOpts.Ks), "Comma-separated kmer lengths to query, each in [2, 13]")
	stride  = flag.Int("stride", scan.DefaultOpts.Stride, "Number of bases between report rows once the window is full")
	format  = flag.String("format", string(scan.DefaultOpts.Format), "Input format; 'auto', 'fasta', 'fastq', and 'raw' supported")
	nonACGT = flag.String("non-acgt", string(scan.DefaultOpts.NonACGT), "What to do with bases other than ACGT; 'reset' empties the window, 'skip' drops the base")
	repeats = flag.Bool("repeats", scan.DefaultOpts.Repeats, "Add a column per k listing the repeated kmers")
)

func joinKs(ks []int) string {
	s := make([]string, len(ks))
	for i, k := range ks {
		s[i] = fmt.Sprint(k)
	}
	return strings.Join(s, ",")
}

func bioKmerWindowUsage() {
	fmt.Printf("Usage: %s [OPTIONS] inpath outpath\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = bioKmerWindowUsage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 2 {
		log.Fatalf("Expected inpath and outpath, got %d positional arguments: '%s'", flag.NArg(), strings.Join(flag.Args(), " "))
	}
	kList, err := scan.ParseKs(*ks)
	if err != nil {
		log.Fatalf("%v", err)
	}
	opts := scan.Opts{
		Width:   *width,
		Ks:      kList,
		Stride:  *stride,
		Format:  scan.Format(*format),
		NonACGT: scan.NonACGTPolicy(*nonACGT),
		Repeats: *repeats,
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("%v", err)
	}
	ctx := vcontext.Background()
	if _, err := scan.Run(ctx, flag.Arg(0), flag.Arg(1), opts); err != nil {
		log.Fatalf("%v", err)
	}
	log.Debug.Printf("exiting")
}
