/*
Command bio-kmer-window slides a fixed-width window along every record of a
FASTA, FASTQ, or raw sequence file and reports, at each window position, the
per-base counts, the number of repeated k-mers, and whether a
reverse-complement palindrome of length k is present.

Input may be gzip/bzip2/zstd compressed.  Output is a TSV file with one row
per reported window position; END is the 1-based position of the window's
last base within its record.

Usage: bio-kmer-window -width=100 -k=4,6,8 -stride=10 in.fa.gz out.tsv
*/
package main
