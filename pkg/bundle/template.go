package bundle

import "html/template"

// viewerTemplate is the offline reader shell. Word boxes are positioned by
// scaling each stored bbox coordinate by displayedSize / naturalImageSize, so
// the overlay lines up at any viewport width.
var viewerTemplate = template.Must(template.New("viewer").Parse(`<!DOCTYPE html>
<html lang="ar">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>قارئ أوفلاين</title>
<style>
body { font-family: Arial, sans-serif; text-align: center; background-color: #f4f4f4; margin: 0; padding: 0; }
#container { display: flex; flex-direction: column; align-items: center; margin: 20px auto; max-width: 100%; }
.page-container { position: relative; margin-bottom: 20px; display: flex; justify-content: center; }
.page-image { max-width: 90vw; height: auto; display: block; }
.word { position: absolute; border: 2px solid rgb(0 0 255 / 1%); background: rgb(0 0 255 / 1%); cursor: pointer; z-index: 10; }
.tooltip { position: fixed; background: #333; color: #fff; padding: 10px; border-radius: 5px; z-index: 1000; max-width: 200px; text-align: left; display: none; }
</style>
</head>
<body>
<h1>قراءة أوفلاين</h1>
<div id="container"></div>
{{range .Pages}}<script type="application/json" class="page-data">{{.}}</script>
{{end}}<script>
(function () {
  const container = document.getElementById("container");
  const pages = Array.from(document.querySelectorAll('script.page-data'))
    .map(s => JSON.parse(s.textContent))
    .sort((a, b) => a.pageNum - b.pageNum);

  function drawWordBoxes(page, img, pageContainer) {
    pageContainer.querySelectorAll(".word").forEach(el => el.remove());
    const scaleX = img.clientWidth / img.naturalWidth;
    const scaleY = img.clientHeight / img.naturalHeight;
    for (const word of page.wordsData || []) {
      const box = word.bbox;
      if (!box) continue;
      const div = document.createElement("div");
      div.className = "word";
      div.style.left = (box.x0 * scaleX) + "px";
      div.style.top = (box.y0 * scaleY) + "px";
      div.style.width = ((box.x1 - box.x0) * scaleX) + "px";
      div.style.height = ((box.y1 - box.y0) * scaleY) + "px";
      div.addEventListener("click", e => {
        e.stopPropagation();
        showTooltip(word.text, word.translation, e.clientX, e.clientY);
      });
      pageContainer.appendChild(div);
    }
  }

  function showTooltip(text, translation, x, y) {
    const existing = document.querySelector(".tooltip");
    if (existing) existing.remove();
    const tooltip = document.createElement("div");
    tooltip.className = "tooltip";
    const original = document.createElement("strong");
    original.textContent = text;
    const translated = document.createElement("strong");
    translated.textContent = translation;
    tooltip.appendChild(original);
    tooltip.appendChild(document.createElement("br"));
    tooltip.appendChild(translated);
    document.body.appendChild(tooltip);
    tooltip.style.left = Math.max(5, Math.min(x + 15, window.innerWidth - tooltip.offsetWidth - 5)) + "px";
    tooltip.style.top = Math.max(5, y + 15) + "px";
    tooltip.style.display = "block";
    document.addEventListener("click", function close(e) {
      if (!tooltip.contains(e.target)) {
        tooltip.remove();
        document.removeEventListener("click", close, true);
      }
    }, true);
  }

  for (const page of pages) {
    const pageContainer = document.createElement("div");
    pageContainer.className = "page-container";
    pageContainer.dataset.pageNum = page.pageNum;
    const img = document.createElement("img");
    img.className = "page-image";
    img.src = page.imgData;
    img.alt = "صفحة " + page.pageNum;
    img.onload = () => drawWordBoxes(page, img, pageContainer);
    pageContainer.appendChild(img);
    container.appendChild(pageContainer);
  }

  let redrawTimer;
  window.addEventListener("resize", () => {
    clearTimeout(redrawTimer);
    redrawTimer = setTimeout(() => {
      for (const pageContainer of container.querySelectorAll(".page-container")) {
        const page = pages.find(p => p.pageNum == pageContainer.dataset.pageNum);
        const img = pageContainer.querySelector(".page-image");
        if (page && img) drawWordBoxes(page, img, pageContainer);
      }
    }, 100);
  });
})();
</script>
</body>
</html>
`))
