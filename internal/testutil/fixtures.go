package testutil

import "testing/fstest"

// ContentFS returns a small article tree covering both layouts, variant pickers
// and a translated page.
func ContentFS() fstest.MapFS {
	return fstest.MapFS{
		"en/index.md": {Data: []byte(`---
title: Hanko Field Docs
intro: Everything about ordering and stamping seals.
layout: inline
---
Start with [ordering a stamp](/en/stamps/order).
`)},
		"en/stamps/index.md": {Data: []byte(`---
title: Stamps
intro: Design, order and care for your seal.
---
Pick a guide below.
`)},
		"en/stamps/order.md": {Data: []byte(`---
title: Ordering a stamp
intro: Place an order from the catalogue.
permissions: Anyone with an account can order.
product: Available in every region.
effective_date: "2024-03-01"
support_portal_va_flow: order-help
default_platform: linux
---
## Choose a design

<div class="ghd-tool mac">Open Finder.</div>
<div class="ghd-tool linux">Open a terminal.</div>
<div class="ghd-tool webui">Use the web shop.</div>

## Pay

` + "```go\nfmt.Println(\"paid\")\n```" + `
`)},
		"en/stamps/care.md": {Data: []byte(`---
title: Caring for a stamp
intro: Keep the face clean.
---
## Cleaning

Wipe after use.
`)},
		"en/rest/orders.md": {Data: []byte(`---
title: Orders API
intro: Endpoints for orders.
---
## List orders
`)},
		"ja/stamps/index.md": {Data: []byte(`---
title: 印鑑
intro: 印鑑のデザインと注文。
---
ガイドを選んでください。
`)},
	}
}

// DataFS returns learning track definitions matching ContentFS.
func DataFS() fstest.MapFS {
	return fstest.MapFS{
		"learning-tracks/stamps.yml": {Data: []byte(`getting_started:
  title: Getting started with stamps
  description: From first order to daily care.
  guides:
    - /stamps/order
    - /stamps/care
`)},
	}
}
