// Package paca resolves model references against a Hugging Face style
// registry and keeps a local cache of their GGUF artifacts in sync.
//
// A model reference has the form "owner/model:tag". Resolution fetches the
// tag manifest, expands split artifacts into their ordered shard list, and
// then brings every file in the cache up to date:
//
//	paths, err := paca.Download(ctx, "unsloth/GLM-4.7-Flash-GGUF:Q2_K_XL")
//	if err != nil {
//	    return err
//	}
//	for _, p := range paths {
//	    fmt.Println(p)
//	}
//
// Freshness is decided by the registry's linked entity tag, stored next to
// each content file. A file whose tag still matches is either accepted as
// complete or resumed from its current length with a range request; a file
// whose tag changed is transferred again from the start. The manifest body
// is written to the cache only after every file of the model is present.
//
// Configuration:
//
//	paca.Download(ctx, ref,
//	    paca.WithCacheDir("/models"),          // default: <user cache>/llama.cpp
//	    paca.WithConcurrency(4),               // parallel shard transfers
//	    paca.WithVerify(paca.VerifySHA256),    // hash check after transfer
//	    paca.WithProgress(func(p paca.Progress) { ... }),
//	)
//
// The registry endpoint is taken from MODEL_ENDPOINT, then HF_ENDPOINT, then
// https://huggingface.co. HF_TOKEN, when set, is sent as a bearer token.
package paca
