package report

// Static per-module lookup tables consumed by the report template.

var moduleIcons = map[string]string{
	"ui":            `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M20 10c0-4.4-3.6-8-8-8s-8 3.6-8 8c0 2 .8 3.8 2.2 5.2Z"/><path d="M7 17a5 5 0 0 0 10 0"/><path d="M12 22v-3"/><path d="M2 12h3"/><path d="M19 12h3"/></svg>`,
	"performance":   `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="m22 12-4-4-4 4"/><path d="m18 12v6a2 2 0 0 1-2 2H8a2 2 0 0 1-2-2v-6"/><path d="m2 12 4 4 4-4"/><path d="m6 12V6a2 2 0 0 1 2-2h4a2 2 0 0 1 2 2v6"/></svg>`,
	"seoContent":    `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><circle cx="11" cy="11" r="8"></circle><line x1="21" y1="21" x2="16.65" y2="16.65"></line></svg>`,
	"security":      `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M12 22s8-4 8-10V5l-8-3-8 3v7c0 6 8 10 8 10z"></path></svg>`,
	"privacy":       `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M2 12s3-7 10-7 10 7 10 7-3 7-10 7-10-7-10-7Z"/><circle cx="12" cy="12" r="3"/></svg>`,
	"compatibility": `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><rect x="2" y="4" width="20" height="16" rx="2"></rect><line x1="2" y1="10" x2="22" y2="10"></line></svg>`,
	"marketing":     `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M12 3a6 6 0 0 0 9 9 9 9 0 1 1-9-9Z"/></svg>`,
	"conversion":    `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M12 2v10l-4-4"/><path d="m16 6-4 4"/><path d="M20.4 13.4A9 9 0 1 1 10.6 4.6"/></svg>`,
	"accessibility": `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><circle cx="12" cy="12" r="10"></circle><path d="M12 16v-4"/><path d="M12 8h.01"/></svg>`,
}

var moduleDescriptions = map[string]string{
	"ui":            "Analyzes the visual design, layout, and branding. A strong UI creates a professional, trustworthy impression.",
	"performance":   "Measures website speed and responsiveness. Faster sites provide a better user experience and rank higher in search results.",
	"seoContent":    "Evaluates how well the site is optimized for search engines. Good SEO helps potential customers find your website.",
	"security":      "Checks for vulnerabilities and proper security configurations. Strong security protects your business and your customers.",
	"privacy":       "Assesses data handling practices and privacy policies. Proper privacy is crucial for legal compliance and building user trust.",
	"compatibility": "Tests how the website functions across different browsers and devices. Broad compatibility ensures a consistent experience for all visitors.",
	"marketing":     "Reviews online marketing elements like social media and calls-to-action. Effective marketing turns visitors into customers.",
	"conversion":    "Analyzes how effectively the site encourages visitors to take action. A high conversion rate means the website is successful at generating business.",
	"accessibility": "Checks if the website is usable by people with disabilities. Accessibility is often a legal requirement and expands your potential audience.",
}

// ModuleIcon returns the inline SVG icon for a module key, empty when unknown.
func ModuleIcon(key string) string {
	return moduleIcons[key]
}

// ModuleDescription returns the blurb shown under a module heading.
func ModuleDescription(key string) string {
	return moduleDescriptions[key]
}
