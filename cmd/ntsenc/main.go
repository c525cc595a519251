package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alovak/nts-userdata/internal/gatewaydev"
)

var (
	flagGateway   = flag.String("gateway", "http://127.0.0.1:9090", "gateway base URL")
	flagKind      = flag.String("kind", "bankcard", "user data kind: bankcard|nonbankcard|product|balance")
	flagFile      = flag.String("file", "-", "JSON request file (- reads stdin)")
	flagReference = flag.String("reference", "", "original message code of a reference to store first (e.g. 02)")
	flagTags      = flag.String("tags", "", "user data tags of the reference as id=value pairs separated by commas")
	flagShowOnly  = flag.Bool("print", false, "print the request JSON only, do not POST")
	flagVerbose   = flag.Bool("verbose", false, "show delimiters and length of the user data")
)

func main() {
	flag.Parse()

	kind, ok := normalizeKind(*flagKind)
	if !ok {
		fail("-kind must be one of %s", strings.Join(gatewaydev.Kinds, "|"))
	}
	tags := must1(parseTags(*flagTags))
	body := must1(readRequest(*flagFile))

	cli := gatewaydev.New(*flagGateway, &http.Client{Timeout: 10 * time.Second})
	ctx := context.Background()

	if *flagReference != "" {
		if *flagShowOnly {
			fail("-reference stores data on the gateway and cannot be combined with -print")
		}
		id := must1(cli.StoreReference(ctx, *flagReference, tags))
		body = must1(withReference(body, id))
		fmt.Fprintf(os.Stderr, "stored reference %s\n", id)
	}

	if *flagShowOnly {
		var v any
		must(json.Unmarshal(body, &v))
		enc, _ := json.MarshalIndent(v, "", "  ")
		fmt.Println(string(enc))
		return
	}

	out := must1(cli.Encode(ctx, kind, body))
	if *flagVerbose {
		fmt.Printf("length: %d\n", out.Length)
		for i, part := range strings.Split(out.UserData, `\`) {
			fmt.Printf("%3d  %q\n", i, part)
		}
		return
	}
	fmt.Println(out.UserData)
}

// normalizeKind accepts the route name in any case, with or without the
// dash of "non-bankcard".
func normalizeKind(kind string) (string, bool) {
	k := strings.ToLower(strings.TrimSpace(kind))
	k = strings.ReplaceAll(k, "-", "")
	for _, known := range gatewaydev.Kinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

func parseTags(s string) (map[string]string, error) {
	tags := map[string]string{}
	if strings.TrimSpace(s) == "" {
		return tags, nil
	}
	for _, pair := range strings.Split(s, ",") {
		id, value, ok := strings.Cut(pair, "=")
		id = strings.TrimSpace(id)
		if !ok || len(id) != 2 {
			return nil, fmt.Errorf("tag %q: want id=value with a two character id", pair)
		}
		tags[id] = value
	}
	return tags, nil
}

func readRequest(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func withReference(body []byte, id string) ([]byte, error) {
	var req map[string]any
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	req["reference_id"] = id
	return json.Marshal(req)
}

func must(err error) {
	if err != nil {
		fail("%v", err)
	}
}
func must1[T any](v T, err error) T {
	if err != nil {
		fail("%v", err)
	}
	return v
}
func fail(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
