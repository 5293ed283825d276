package audit

// Translation carries the curated display strings for a known audit ID.
type Translation struct {
	Title  string
	Action string
}

// translations maps PageSpeed audit IDs to curated titles and remediation
// advice. Read-only after init; an ID missing here only means the raw audit
// title and description are shown instead.
var translations = map[string]Translation{
	"render-blocking-resources": {
		Title:  "🚫 Eliminate Render-Blocking Resources",
		Action: "Load CSS and JavaScript with async/defer. Inline the critical CSS.",
	},
	"unused-javascript": {
		Title:  "📦 Remove Unused JavaScript",
		Action: "Find and delete dead JS code. Apply code splitting.",
	},
	"unused-css-rules": {
		Title:  "🎨 Clean Up Unused CSS",
		Action: "Strip unused styles with PurgeCSS or a similar tool.",
	},
	"unminified-javascript": {
		Title:  "📉 Minify JavaScript",
		Action: "Minify JS bundles with Terser or UglifyJS.",
	},
	"unminified-css": {
		Title:  "📉 Minify CSS",
		Action: "Minify CSS files with cssnano or a similar tool.",
	},
	"modern-image-formats": {
		Title:  "🖼️ Serve Images in Modern Formats",
		Action: "Use WebP or AVIF instead of JPEG/PNG. Saves 25-50% of image weight.",
	},
	"uses-optimized-images": {
		Title:  "🖼️ Optimize Your Images",
		Action: "Compress images (TinyPNG, ImageOptim) and reduce their dimensions.",
	},
	"offscreen-images": {
		Title:  "📸 Lazy-Load Offscreen Images",
		Action: "Add loading='lazy' and defer images outside the viewport.",
	},
	"uses-responsive-images": {
		Title:  "📱 Use Responsive Images",
		Action: "Serve size-appropriate images through srcset and sizes attributes.",
	},
	"efficiently-encode-images": {
		Title:  "🔧 Encode Images Efficiently",
		Action: "Re-encode images at JPEG quality 80-85.",
	},
	"uses-text-compression": {
		Title:  "📦 Enable Text Compression (Gzip/Brotli)",
		Action: "Turn on Gzip or Brotli compression in the server configuration.",
	},
	"uses-rel-preconnect": {
		Title:  "🔗 Preconnect to Required Origins",
		Action: "Add <link rel='preconnect'> for third-party origins.",
	},
	"uses-rel-preload": {
		Title:  "⚡ Preload Critical Resources",
		Action: "Add <link rel='preload'> for the important fonts and CSS.",
	},
	"server-response-time": {
		Title:  "🖥️ Reduce Server Response Time (TTFB)",
		Action: "Use a CDN, optimize database queries and add caching.",
	},
	"redirects": {
		Title:  "🔀 Avoid Redirect Chains",
		Action: "Remove unnecessary redirect hops and link straight to the final URL.",
	},
	"uses-http2": {
		Title:  "🌐 Use HTTP/2",
		Action: "Configure the server to serve traffic over HTTP/2.",
	},
	"dom-size": {
		Title:  "📄 Reduce DOM Size",
		Action: "Remove unneeded HTML elements. Consider virtual scrolling for long lists.",
	},
	"critical-request-chains": {
		Title:  "⛓️ Shorten Critical Request Chains",
		Action: "Inline critical resources or preload them.",
	},
	"bootup-time": {
		Title:  "⏱️ Reduce JavaScript Execution Time",
		Action: "Move heavy JS work into Web Workers. Split large bundles.",
	},
	"mainthread-work-breakdown": {
		Title:  "🧵 Minimize Main-Thread Work",
		Action: "Optimize JS execution and break long tasks into smaller chunks.",
	},
	"font-display": {
		Title:  "🔤 Fix the Font Display Strategy",
		Action: "Use font-display: swap to avoid invisible text while fonts load.",
	},
	"third-party-summary": {
		Title:  "🔌 Trim Third-Party Scripts",
		Action: "Remove or defer nonessential third-party scripts (analytics, chat widgets).",
	},
	"largest-contentful-paint-element": {
		Title:  "🎯 Optimize the LCP Element",
		Action: "Preload the hero image, serve it from a CDN and shrink its size.",
	},
	"lcp-lazy-loaded": {
		Title:  "⚠️ LCP Image Is Lazy-Loaded",
		Action: "Remove loading='lazy' from the LCP (hero) image!",
	},
	"total-blocking-time": {
		Title:  "⏳ Reduce Total Blocking Time",
		Action: "Split long JavaScript tasks and keep the main thread free.",
	},
	"cumulative-layout-shift": {
		Title:  "📐 Prevent Layout Shifts (CLS)",
		Action: "Set width/height on images and iframes. Avoid font swap jumps.",
	},
	"prioritize-lcp-image": {
		Title:  "🖼️ Prioritize the LCP Image",
		Action: "Use fetchpriority='high' plus preload for the LCP image.",
	},
	"legacy-javascript": {
		Title:  "📜 Drop Legacy JavaScript Polyfills",
		Action: "Remove polyfills modern browsers no longer need.",
	},
	"duplicated-javascript": {
		Title:  "📦 Deduplicate JavaScript Modules",
		Action: "Run a bundle analysis and remove duplicate modules.",
	},
}
