// Copyright (c) 2025 the FormIQ authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package genai generates survey questions from a topic.

The Generator interface is the unit handlers depend on; the OpenAI
implementation calls the chat completions API, asks for a numbered
list, and parses it line by line. Every generated question gets the
fixed five-point agreement scale as its option labels.

Generators are constructed in main and injected where needed. Provider
failures are wrapped in ErrGenerationFailed, which is not part of the
store's error taxonomy and maps to 502 at the boundary.
*/
package genai
