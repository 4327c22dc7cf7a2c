package help

const ColdstartYAML = `# scanlate Quick Start

inputs:
  pdf: "Multi-page chapter, rasterized by the backend service"
  image: "Single JPEG/PNG page, OCR'd locally"

commands:
  process_pdf: |
    scanlate process chapter.pdf

  process_and_export: |
    scanlate process chapter.pdf --out chapter.html

  offline_rerun: |
    # Cached and dictionary words resolve; the rest get the offline marker
    scanlate process chapter.pdf --offline

  fresh_cache: |
    scanlate process chapter.pdf --fresh-cache

  export_session: |
    scanlate export --out chapter.html

  import_bundle: |
    scanlate import chapter.html

  inspect_store: |
    scanlate db stats

translation_tiers:
  - "1. in-memory map (this run)"
  - "2. SQLite translations table (across runs)"
  - "3. bundled en->ar dictionary"
  - "4. MyMemory API, throttled to one call per request_delay_ms"

cache_invariants:
  - "A word is fetched remotely at most once per run"
  - "Failed lookups cache a sentinel so they are not retried this run"
  - "Sentinels never reach the SQLite tier"
  - "Only pages are cleared per run; translations persist unless --fresh-cache"

bundle:
  - "Single self-contained HTML file, works from file:// with no network"
  - "Word boxes scale with the viewport; geometry survives export/import"
  - "scanlate import <bundle> replaces the current session's pages"

config:
  - "config.yaml next to the binary (all fields optional)"
  - "SCANLATE_BACKEND_URL / SCANLATE_API_URL env overrides, .env supported"
`
