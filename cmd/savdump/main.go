package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"

	"github.com/outrider-labs/remnantsav"
)

var (
	noCRCCheck bool
	outDir     string
)

func prettyPrint(v interface{}) string {
	buff, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buff, "", "\t"); err != nil {
		return string(buff)
	}
	return pretty.String()
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func dumpOne(filename string, base log.Logger, logger *log.Helper) {
	logger.Infof("parsing filename %s", filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		logger.Infof("error while reading file: %s, reason: %s", filename, err)
		return
	}

	archive, err := remnantsav.DecodeSavFile(data, &remnantsav.Options{
		DisableCRCCheck: noCRCCheck,
		Logger:          base,
	})
	if err != nil {
		logger.Infof("error while parsing file: %s, reason: %s", filename, err)
		return
	}

	if outDir == "" {
		fmt.Println(prettyPrint(archive))
		return
	}

	out := filepath.Join(outDir, filepath.Base(filename)+".json")
	if err := os.WriteFile(out, []byte(prettyPrint(archive)), 0o644); err != nil {
		logger.Infof("error while writing %s: %s", out, err)
	}
}

func dump(cmd *cobra.Command, args []string) {
	base := log.NewFilter(log.NewStdLogger(os.Stdout), log.FilterLevel(log.LevelInfo))
	logger := log.NewHelper(base)

	target := args[0]
	if !isDirectory(target) {
		dumpOne(target, base, logger)
		return
	}

	var files []string
	filepath.Walk(target, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && filepath.Ext(path) == ".sav" {
			files = append(files, path)
		}
		return nil
	})
	for _, f := range files {
		dumpOne(f, base, logger)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "savdump",
		Short: "A save-game archive decoder",
		Long:  "Decodes and JSON-dumps the chunked zlib save-game container and its nested object archive",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("savdump 0.1.0")
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump [file or directory]",
		Short: "Dump a .sav file (or a directory of them) as JSON",
		Args:  cobra.ExactArgs(1),
		Run:   dump,
	}
	dumpCmd.Flags().BoolVarP(&noCRCCheck, "no-crc-check", "", false, "skip the container CRC32 check")
	dumpCmd.Flags().StringVarP(&outDir, "out", "o", "", "write one <name>.json per input file into this directory instead of stdout")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
